package models

// Record — ресурс, принадлежащий пользователю. Связь храним как FK-поле,
// без обратных ссылок; нужные выборки делаются явными запросами.
type Record struct {
	ID          int64  `json:"record_id"`
	Name        string `json:"record_name"`
	Description string `json:"record_description"`
	UserID      int    `json:"user_id"`
}
