package models

// TourCount is one row of the tour registry.
type TourCount struct {
	// Tour is the tour identifier as text; it is the sort key.
	Tour string `json:"tour"`
	// Value is the first source value seen for the tour, written back as-is.
	Value interface{} `json:"-"`
	// Customers is the number of source rows carrying a customer for the tour.
	Customers int `json:"customers"`
}
