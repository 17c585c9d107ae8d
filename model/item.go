// model/item.go
package model

type ItemKind string

const (
	KindInstrument ItemKind = "INSTRUMENT"
	KindMusicSheet ItemKind = "MUSIC_SHEET"
)

// Item is a rentable thing. Instruments and music sheets share one lifecycle;
// the scheduling core only ever reads id, owner_id and price_per_day.
type Item struct {
	ID          int64    `db:"id" json:"id"`
	Kind        ItemKind `db:"kind" json:"kind"`
	OwnerID     int64    `db:"owner_id" json:"owner_id"`
	Name        string   `db:"name" json:"name"`
	Description *string  `db:"description" json:"description,omitempty"`
	PricePerDay float64  `db:"price_per_day" json:"price_per_day"`

	// instrument-only fields
	InstrumentType *string `db:"instrument_type" json:"instrument_type,omitempty"`
	Family         *string `db:"family" json:"family,omitempty"`
	Age            *int    `db:"age" json:"age,omitempty"`

	// music-sheet-only fields
	Composer *string `db:"composer" json:"composer,omitempty"`
	Category *string `db:"category" json:"category,omitempty"`
}

func (i *Item) IsMusicSheet() bool { return i.Kind == KindMusicSheet }
