package entity

type Hotel struct {
	Base
	Name        string  `db:"name"`
	Location    string  `db:"location"`
	City        string  `db:"city"`
	Description *string `db:"description"`
}
