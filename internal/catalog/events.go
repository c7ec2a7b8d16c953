package catalog

// Event 活动样例数据，供默认智能体的 list_events 工具查询
type Event struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	ImageURL    string `json:"image_url"`
}

var events = []Event{
	{Name: "Spring Design Market", Category: "market", Description: "Local makers showcase furniture and home goods", Location: "Riverside Hall", Date: "2025-04-12", ImageURL: "https://images.mcpmyapi.dev/events/spring-market.jpg"},
	{Name: "Upholstery Workshop", Category: "workshop", Description: "Hands-on session on re-covering chairs", Location: "Studio 2, Main St", Date: "2025-04-26", ImageURL: "https://images.mcpmyapi.dev/events/upholstery.jpg"},
	{Name: "Small Space Living Talk", Category: "talk", Description: "Designing interiors for compact apartments", Location: "City Library Auditorium", Date: "2025-05-03", ImageURL: "https://images.mcpmyapi.dev/events/small-space.jpg"},
	{Name: "Showroom Open Night", Category: "open-house", Description: "After-hours tour with designer Q&A", Location: "Showroom D", Date: "2025-05-17", ImageURL: "https://images.mcpmyapi.dev/events/open-night.jpg"},
}

// Events 按分类过滤活动，空串返回全部
func Events(category string) []Event {
	if category == "" {
		return events
	}
	var result []Event
	for _, e := range events {
		if e.Category == category {
			result = append(result, e)
		}
	}
	return result
}
