package get_available_slots

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotAvailableOnResource возвращается, когда услуга не выполняется этим ресурсом
	ErrServiceNotAvailableOnResource = errors.New("service is not available on this resource")

	// ErrCampaignNotFound возвращается, когда промо-кампания не найдена
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrCampaignNotLinked возвращается, когда кампания не привязана к запрошенной услуге
	ErrCampaignNotLinked = errors.New("campaign is not linked to this service")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
