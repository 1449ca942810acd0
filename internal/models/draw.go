package models

// MaxNumber is the highest ball in a 75-ball game.
const MaxNumber = 75

// BandSize is how many numbers share one letter.
const BandSize = 15

// Letter is the column label of a bingo number
type Letter string

const (
	LetterB Letter = "B"
	LetterI Letter = "I"
	LetterN Letter = "N"
	LetterG Letter = "G"
	LetterO Letter = "O"
)

// Letters lists the bands in board order.
var Letters = []Letter{LetterB, LetterI, LetterN, LetterG, LetterO}

// GameStatus represents the state of a game
type GameStatus string

const (
	GameStatusActive    GameStatus = "ACTIVE"
	GameStatusExhausted GameStatus = "EXHAUSTED"
)

// BingoState is the persisted form of a game. DrawnNumbers is in draw order.
type BingoState struct {
	DrawnNumbers []int `json:"drawnNumbers"`
}

// GameSnapshot is what the API and the board page render.
type GameSnapshot struct {
	DrawnNumbers  []int      `json:"drawnNumbers"`
	Count         int        `json:"count"`
	Remaining     int        `json:"remaining"`
	Status        GameStatus `json:"status"`
	CurrentNumber int        `json:"currentNumber,omitempty"`
	CurrentLetter Letter     `json:"currentLetter,omitempty"`
	StatusText    string     `json:"statusText"`
}

// DrawResult is returned by a successful draw
type DrawResult struct {
	Number            int           `json:"number"`
	Letter            Letter        `json:"letter"`
	StatusText        string        `json:"statusText"`
	ShuffleFrames     []int         `json:"shuffleFrames"`
	ShuffleIntervalMs int           `json:"shuffleIntervalMs"`
	Game              *GameSnapshot `json:"game"`
}

// BoardCell is one number on the board page.
type BoardCell struct {
	Number int
	Active bool
}

// BoardColumn is one lettered column of 15 cells.
type BoardColumn struct {
	Letter Letter
	Cells  []BoardCell
}
