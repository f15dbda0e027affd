package request

// Criteria describes the kind of room a line asks for. Free-form aside from
// capacity; matching against the catalog happens at resolution time.
type Criteria struct {
	roomType    string
	minCapacity int
	equipment   []string
	note        string
}

func NewCriteria(roomType string, minCapacity int, equipment []string, note string) Criteria {
	return Criteria{
		roomType:    roomType,
		minCapacity: minCapacity,
		equipment:   equipment,
		note:        note,
	}
}

func (c Criteria) RoomType() string    { return c.roomType }
func (c Criteria) MinCapacity() int    { return c.minCapacity }
func (c Criteria) Equipment() []string { return c.equipment }
func (c Criteria) Note() string        { return c.note }
