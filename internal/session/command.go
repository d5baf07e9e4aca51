package session

// Command is a user action fed into the session loop.
type Command interface{ isCommand() }

// Move selects the cell at a flat row-major index.
type Move struct{ Cell int }

// Leave gives up the seat in the current game.
type Leave struct{}

// Join asks the server for another game once the held one is over or left.
type Join struct{}

// Quit stops the session loop.
type Quit struct{}

func (Move) isCommand()  {}
func (Leave) isCommand() {}
func (Join) isCommand()  {}
func (Quit) isCommand()  {}
