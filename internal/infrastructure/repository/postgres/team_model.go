package postgres

type teamTableModel struct {
	PublicID  string `db:"public_id"`
	Name      string `db:"name"`
	ShortName string `db:"short_name"`
	IsActive  bool   `db:"is_active"`
}
