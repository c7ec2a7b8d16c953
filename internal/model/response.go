package model

// AgentResult 所有智能体统一的返回结构
type AgentResult struct {
	Success        bool   `json:"success"`
	Response       string `json:"response,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Error          string `json:"error,omitempty"`

	// conversation_agent 附加字段
	Items           []CatalogItem `json:"items,omitempty"`
	CaseDescription string        `json:"case_description,omitempty"`

	// 生成流水线附加字段
	UIID    string `json:"ui_id,omitempty"`
	URL     string `json:"url,omitempty"`
	Preview string `json:"generated_code_preview,omitempty"`
}

// CatalogItem 家具目录中的一条记录
type CatalogItem struct {
	Type        string `json:"type"`
	Color       string `json:"color"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"image_url"`
	Location    string `json:"location"`
}
