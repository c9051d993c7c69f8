package domain

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Location is a delivery endpoint. Coordinates are nil when the upstream
// record carried none.
type Location struct {
	Address     string       `json:"address"`
	PostalCode  string       `json:"postal_code"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Zone        string       `json:"zone"`
}

// Point returns the coordinates or the zero point.
func (l Location) Point() Coordinates {
	if l.Coordinates == nil {
		return Coordinates{}
	}
	return *l.Coordinates
}
