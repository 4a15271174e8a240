package audit

type ListAuditEventsQuery struct {
	ActorID  string `form:"actor_id"`
	Kind     string `form:"kind"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type AuditEventResponse struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id"`
	Kind       string `json:"kind"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Detail     string `json:"detail"`
	CreatedAt  string `json:"created_at"`
}
