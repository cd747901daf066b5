package pkg

// Action strings double as button labels and wire values.
type Action string

const (
	ActionDrawOffer    Action = "Want Draw"
	ActionDrawAccept   Action = "Accept"
	ActionDrawReject   Action = "Reject"
	ActionResign       Action = "Resign"
	ActionNewGameOffer Action = "New Game"
	ActionExit         Action = "Exit"
)
