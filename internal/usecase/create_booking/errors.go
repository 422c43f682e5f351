package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotAvailableOnResource возвращается, когда услуга не выполняется этим ресурсом
	ErrServiceNotAvailableOnResource = errors.New("create_booking: service is not available on this resource")

	// ErrCampaignNotFound возвращается, когда промо-кампания не найдена
	ErrCampaignNotFound = errors.New("create_booking: campaign not found")

	// ErrCampaignNotLinked возвращается, когда кампания не привязана к запрошенной услуге
	ErrCampaignNotLinked = errors.New("create_booking: campaign is not linked to this service")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrResourceClosed возвращается, когда ресурс не работает в запрошенное время
	ErrResourceClosed = errors.New("create_booking: resource is closed at this time")

	// ErrSlotConflict возвращается, когда запрошенный интервал пересекается
	// с существующим бронированием, перерывом или блокировкой
	// Детали конфликта несет *ConflictError, оборачивающий эту ошибку
	ErrSlotConflict = errors.New("create_booking: time range conflicts with existing entry")

	// ErrStaleData возвращается, когда состояние, на котором клиент основывал
	// выбор слота, устарело: конкурентная запись выиграла гонку
	ErrStaleData = errors.New("create_booking: state changed, please re-read and retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
