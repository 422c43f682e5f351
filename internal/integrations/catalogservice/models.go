package catalogservice

// Resource модель ресурса (специалиста) из CatalogService
type Resource struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	OwnerUserID int64  `json:"owner_user_id"` // владелец/администратор ресурса
	IsActive    bool   `json:"is_active"`
}

// Service модель услуги из CatalogService
type Service struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	DurationMinutes    int      `json:"duration_minutes"`
	Price              *float64 `json:"price,omitempty"`
	ResourceIDs        []int64  `json:"resource_ids"` // ресурсы, выполняющие услугу
	UpsellCampaignID   *int64   `json:"upsell_campaign_id,omitempty"`
	DownsellCampaignID *int64   `json:"downsell_campaign_id,omitempty"`
}

// Campaign модель промо-кампании (upsell/downsell) из CatalogService
// CustomDurationMinutes при наличии полностью заменяет базовую длительность услуги
type Campaign struct {
	ID                    int64  `json:"id"`
	LinkedServiceID       int64  `json:"linked_service_id"`
	Title                 string `json:"title"`
	CustomDurationMinutes *int   `json:"custom_duration_minutes,omitempty"`
	IsActive              bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
