package participation

// SeasonParticipation gates which users take part in a season.
type SeasonParticipation struct {
	SeasonID    string
	UserID      string
	DisplayName string
	IsApproved  bool
}
