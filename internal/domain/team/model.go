package team

import "fmt"

// Team is a real football club. Inactive teams cannot be picked.
type Team struct {
	ID        string
	Name      string
	ShortName string
	IsActive  bool
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
