package models

// WaterStatus is the hydration view for today.
type WaterStatus struct {
	Current    int    `json:"current"`
	Goal       int    `json:"goal" validate:"min=1,max=20"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// WaterGoal is the validated input to a goal change.
type WaterGoal struct {
	Goal int `json:"goal" validate:"min=1,max=20"`
}
