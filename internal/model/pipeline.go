package model

// ContextData 待注入 HTML 的真实数据，三个数组按下标对齐
type ContextData struct {
	ImageURLs    []string `json:"image_urls"`
	Descriptions []string `json:"descriptions"`
	Locations    []string `json:"locations"`
}

// Empty 判断是否没有任何可注入数据
func (c *ContextData) Empty() bool {
	return c == nil || (len(c.ImageURLs) == 0 && len(c.Descriptions) == 0 && len(c.Locations) == 0)
}

// PipelineRequest 生成流水线的输入
type PipelineRequest struct {
	UserMessage string
	Context     *ContextData
	History     []Message
}

// PipelineResult 生成流水线的输出
type PipelineResult struct {
	Success    bool   `json:"success"`
	HTML       string `json:"html,omitempty"`
	Preview    string `json:"preview,omitempty"`
	PublishID  string `json:"publish_id,omitempty"`
	PublishURL string `json:"publish_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// InterpretedQuery 查询解释器的结构化输出
type InterpretedQuery struct {
	Items           []string `json:"suggestions"`
	CaseDescription string   `json:"case_description"`
}
