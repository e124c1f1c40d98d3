// Package models defines the core record types the engine scores and ranks.
package models

// ScoreRow is the fixed record the ranker consumes: exactly the six fields
// an external row store supplies for the score fetch mode. It carries no
// display-only columns — those live in DisplayRow, fetched separately and
// only when a caller needs them.
type ScoreRow struct {
	RowID            int64
	VoterNameRaw     string
	RelativeNameRaw  string
	VoterNameNorm    string
	RelativeNameNorm string
	SerialNo         int64
}

// DisplayRow is the wider record a UI or export consumes. It is fetched by
// the same (ac, row_id_list) key as ScoreRow but through a separate call —
// the ranker never sees it.
type DisplayRow struct {
	RowID           int64
	VoterNameRaw    string
	RelativeNameRaw string
	SerialNo        int64
	EPICNo          string
	Age             int
	Gender          string
	HouseNo         string
	PartNo          int
	AC              int
}
