package api

import (
	"time"

	"github.com/krishisahayak/sahayak/internal/store"
)

// Market is one mandi quote inside a PriceQuote.
type Market struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	UpdatedAt string  `json:"updatedAt"`
}

// PriceQuote is the backend's current-price payload for a crop/state pair.
type PriceQuote struct {
	MinPrice         float64  `json:"minPrice"`
	ModalPrice       float64  `json:"modalPrice"`
	MaxPrice         float64  `json:"maxPrice"`
	MinPriceChange   float64  `json:"minPriceChange"`
	ModalPriceChange float64  `json:"modalPriceChange"`
	MaxPriceChange   float64  `json:"maxPriceChange"`
	WeeklyHigh       float64  `json:"weeklyHigh"`
	WeeklyLow        float64  `json:"weeklyLow"`
	MonthlyAvg       float64  `json:"monthlyAvg"`
	Volatility       float64  `json:"volatility"`
	Markets          []Market `json:"markets"`
}

// PricePoint is one day in a history or forecast series.
type PricePoint struct {
	Date       string  `json:"date"`
	MinPrice   float64 `json:"minPrice"`
	ModalPrice float64 `json:"modalPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

// Crop describes one entry of the crop guide.
type Crop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Season      string `json:"season"`
	Duration    string `json:"duration"`
	WaterNeed   string `json:"waterNeed"`
	Soil        string `json:"soil"`
	Description string `json:"description"`
}

// DiseaseReport is the detection result for an uploaded plant image.
type DiseaseReport struct {
	Disease    string   `json:"disease"`
	Confidence float64  `json:"confidence"`
	Treatment  string   `json:"treatment"`
	Prevention []string `json:"prevention"`
}

// CostRequest asks for a cultivation cost estimate.
type CostRequest struct {
	Crop     string  `json:"crop"`
	Area     float64 `json:"area"`
	AreaUnit string  `json:"areaUnit"`
	Location string  `json:"location"`
}

// CostEstimate is the calculator's response.
type CostEstimate struct {
	Total     float64            `json:"total"`
	PerAcre   float64            `json:"perAcre"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// ChatQuery is a chatbot question.
type ChatQuery struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// ChatReply is the chatbot's answer.
type ChatReply struct {
	Reply    string `json:"reply"`
	AudioURL string `json:"audio_url,omitempty"`
}

// WeatherAlert is one advisory attached to a weather report.
type WeatherAlert struct {
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WeatherReport is the backend's weather payload for a location.
type WeatherReport struct {
	Location  string         `json:"location"`
	TempC     float64        `json:"tempC"`
	Humidity  float64        `json:"humidity"`
	Condition string         `json:"condition"`
	Alerts    []WeatherAlert `json:"alerts"`
}

// ActivityEntry is one row of the user's activity feed.
type ActivityEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
}

// Credentials is a login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest carries the registration form.
type SignupRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Password     string   `json:"password"`
	Location     string   `json:"location"`
	FarmSize     string   `json:"farmSize"`
	PrimaryCrops []string `json:"primaryCrops"`
}

// Session is the authenticated response to login and signup.
type Session struct {
	Token string     `json:"token"`
	User  store.User `json:"user"`
}
