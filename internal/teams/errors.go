package teams

import "errors"

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrNotTeamOwner = errors.New("not the team owner")
)
