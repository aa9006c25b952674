package dto

// CreateTripRequest creates a trip and materializes its day rows.
type CreateTripRequest struct {
	Title     string             `json:"title" validate:"required,min=1,max=100"`
	City      string             `json:"city" validate:"omitempty,min=1,max=50"`
	DestTz    string             `json:"destTz" validate:"omitempty,max=64"`
	StartDate string             `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string             `json:"endDate" validate:"required,datetime=2006-01-02"`
	Pace      string             `json:"pace" validate:"omitempty,oneof=relax normal max"`
	DayStart  string             `json:"dayStart" validate:"omitempty"`
	DayEnd    string             `json:"dayEnd" validate:"omitempty"`
	Budget    string             `json:"budget" validate:"omitempty,oneof=dollar dollarDollar dollarDollarDollar"`
	MealPlan  string             `json:"mealPlan" validate:"omitempty,oneof=light standard food_focused"`
	Interests map[string]float64 `json:"interests"`
	Cuisines  []string           `json:"cuisines"`
}

// UpdateTripRequest patches trip fields. Nil pointers leave fields untouched.
type UpdateTripRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=100"`
	City     *string `json:"city" validate:"omitempty,max=50"`
	DestTz   *string `json:"destTz" validate:"omitempty,max=64"`
	Pace     *string `json:"pace" validate:"omitempty,oneof=relax normal max"`
	DayStart *string `json:"dayStart"`
	DayEnd   *string `json:"dayEnd"`
	Budget   *string `json:"budget" validate:"omitempty,oneof=dollar dollarDollar dollarDollarDollar"`
	MealPlan *string `json:"mealPlan" validate:"omitempty,oneof=light standard food_focused"`
}

// UpdateDayRequest patches a single trip day.
type UpdateDayRequest struct {
	City      *string  `json:"city" validate:"omitempty,max=50"`
	AreaFocus []string `json:"areaFocus"`
	Theme     *string  `json:"theme" validate:"omitempty,oneof=food shopping nightlife rainy_day scenic"`
}

// CreateFixedWindowRequest pins an immovable block onto a day.
type CreateFixedWindowRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=100"`
	StartAt  string `json:"startAt" validate:"required"`
	EndAt    string `json:"endAt" validate:"required"`
	Location string `json:"location" validate:"omitempty,max=200"`
}

// CreateAgendaItemRequest manually places a single visit on a day.
type CreateAgendaItemRequest struct {
	PoiID   string `json:"poiId" validate:"required"`
	StartAt string `json:"startAt" validate:"required"`
	EndAt   string `json:"endAt" validate:"required"`
	Mode    string `json:"mode" validate:"required,oneof=location_aware activity_focused"`
	Locked  bool   `json:"locked"`
}
