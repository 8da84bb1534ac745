package locations

import "fmt"

// Binding pairs one barber's Google Calendar with the display name the
// frontend shows above their column.
type Binding struct {
	CalendarID string `json:"calendarId"`
	Name       string `json:"name"`
}

// Location is one physical shop. Bindings keep their declaration order;
// the merged event feed and the frontend columns both follow it.
type Location struct {
	ID       string    `json:"id"`
	Bindings []Binding `json:"bindings"`
}

var ErrUnknown = fmt.Errorf("unknown location")

var table = []Location{
	{
		ID: "modrany",
		Bindings: []Binding{
			{CalendarID: "realbarberpivrnecmodrany@gmail.com", Name: "Denis"},
			{CalendarID: "realbarbervobeckymodrany@gmail.com", Name: "Karel"},
			{CalendarID: "realbarberpechackova@gmail.com", Name: "Káťa"},
			{CalendarID: "realbarbertichy@gmail.com", Name: "Mára"},
			{CalendarID: "realbarbercertok@gmail.com", Name: "Maty"},
			{CalendarID: "realbarberturek@gmail.com", Name: "Ondřej"},
			{CalendarID: "realbarberrejlek@gmail.com", Name: "Rejlis"},
			{CalendarID: "realbarberproseniuc@gmail.com", Name: "Saša"},
			{CalendarID: "realbarbersvorcik@gmail.com", Name: "Švorča"},
			{CalendarID: "realbarberbouzek@gmail.com", Name: "Zlatej"},
			{CalendarID: "bascorealbarber@gmail.com", Name: "Evžen"},
			{CalendarID: "realbarberdemeter@gmail.com", Name: "Samuel"},
			{CalendarID: "realbarbersvyscev@gmail.com", Name: "Mark"},
		},
	},
	{
		ID: "hagibor",
		Bindings: []Binding{
			{CalendarID: "realbarberkroupova@gmail.com", Name: "Bára"},
			{CalendarID: "realbarbercecek@gmail.com", Name: "David"},
			{CalendarID: "realbarberdemeterhagibor@gmail.com", Name: "Samuel"},
			{CalendarID: "realbarbervobeckyhagibor@gmail.com", Name: "Karel"},
			{CalendarID: "realbarbercertokhagibor@gmail.com", Name: "Maty"},
			{CalendarID: "realbarberturekmodrany@gmail.com", Name: "Ondra"},
			{CalendarID: "realbarberrejlekhagibor@gmail.com", Name: "Rejlis"},
		},
	},
	{
		ID: "kacerov",
		Bindings: []Binding{
			{CalendarID: "realbarberurbanova@gmail.com", Name: "Anna"},
			{CalendarID: "realbarberpivrenc@gmail.com", Name: "Denis"},
			{CalendarID: "realbarberweinwurtnerova@gmail.com", Name: "Eliška"},
			{CalendarID: "realbarbervobecky@gmail.com", Name: "Karel"},
			{CalendarID: "realbarberkalvoda@gmail.com", Name: "Matyáš"},
			{CalendarID: "realbarbersvyscevkacerov@gmail.com", Name: "Mark"},
			{CalendarID: "realbarberchochola@gmail.com", Name: "Johny"},
		},
	},
}

// Get returns the location with the given id.
func Get(id string) (Location, error) {
	for _, loc := range table {
		if loc.ID == id {
			return loc, nil
		}
	}
	return Location{}, fmt.Errorf("%w: %q", ErrUnknown, id)
}

// All returns every configured location in declaration order.
func All() []Location {
	out := make([]Location, len(table))
	copy(out, table)
	return out
}

// IDs returns the configured location identifiers in declaration order.
func IDs() []string {
	ids := make([]string, 0, len(table))
	for _, loc := range table {
		ids = append(ids, loc.ID)
	}
	return ids
}
