package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessmoves/internal/ws"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrOutOfBounds   = errors.New("square out of bounds")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotAuthorized = errors.New("not authorized to join this game")

	// ErrDuplicateConnection means the player already has a live
	// connection; the existing one is kept.
	ErrDuplicateConnection = errors.New("connection already exists")
)

// GameConnections maps player ids to their WebSocket clients.
type GameConnections struct {
	clients map[string]*Client
	mu      sync.Mutex
}

// Game holds one board and its observers. Every access to the board goes
// through mu, legal move queries included, since they mutate and restore
// the board.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	connections *GameConnections
}

type GameState struct {
	Board          *BoardState    `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *SimpleMove `json:"lastMove"`
}

// CapturedPieces lists pieces taken by each color.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string, mode GameMode) *Game {
	return &Game{
		ID:          id,
		state:       newGameState(mode),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		clients: make(map[string]*Client),
	}
}

func newGameState(mode GameMode) GameState {
	return GameState{
		Board:       NewBoard(mode),
		ToMove:      White,
		MoveHistory: make([]Move, 0),
		CapturedPieces: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
	}
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.colorOf(playerID) != "" {
		return g.colorOf(playerID), nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{ID: playerID, Color: White}
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: Black}
		return Black, nil
	}
	return "", ErrGameFull
}

// GetState returns a copy that is safe to use after the lock is released.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	state := g.state
	state.Board = g.state.Board.Clone()
	state.MoveHistory = append([]Move(nil), g.state.MoveHistory...)
	state.CapturedPieces = CapturedPieces{
		White: append([]Piece(nil), g.state.CapturedPieces.White...),
		Black: append([]Piece(nil), g.state.CapturedPieces.Black...),
	}
	if g.state.LastMove != nil {
		last := *g.state.LastMove
		state.LastMove = &last
	}
	return state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.colorOf(playerID) != ""
}

func (g *Game) colorOf(playerID string) Color {
	if playerID == "" {
		return ""
	}
	if g.state.Players.White.ID == playerID {
		return White
	}
	if g.state.Players.Black.ID == playerID {
		return Black
	}
	return ""
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// LegalMoves returns the legal destinations of the piece on from.
func (g *Game) LegalMoves(from Position) ([]Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece, err := g.pieceAt(from)
	if err != nil {
		return nil, err
	}
	return LegalMoves(piece, g.state.Board), nil
}

func (g *Game) pieceAt(pos Position) (*Piece, error) {
	if !g.state.Board.InBounds(pos) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, pos.X, pos.Y)
	}
	piece := g.state.Board.PieceAt(pos)
	if piece == nil {
		return nil, ErrNoPiece
	}
	return piece, nil
}

func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece, err := g.validateMove(playerID, move)
	if err != nil {
		return err
	}
	g.executeMove(piece, move)

	// queued under g.mu so observers see states in move order
	payload, err := g.stateMessage()
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return nil
	}
	g.broadcast(payload)
	return nil
}

func (g *Game) validateMove(playerID string, move WSMove) (*Piece, error) {
	piece, err := g.pieceAt(move.From)
	if err != nil {
		return nil, err
	}
	if !g.state.Board.InBounds(move.To) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, move.To.X, move.To.Y)
	}
	color := g.colorOf(playerID)
	if color == "" {
		return nil, ErrNotInGame
	}
	if color != g.state.ToMove || piece.Color != color {
		return nil, ErrNotYourTurn
	}
	for _, to := range LegalMoves(piece, g.state.Board) {
		if to == move.To {
			return piece, nil
		}
	}
	return nil, fmt.Errorf("%w: %s to (%d,%d)", ErrIllegalMove, piece, move.To.X, move.To.Y)
}

func (g *Game) executeMove(piece *Piece, move WSMove) {
	ply := Ply{
		Piece: piece.Type,
		Color: piece.Color,
		From:  move.From,
		To:    move.To,
	}
	if captured := g.state.Board.PieceAt(move.To); captured != nil {
		taken := *captured.clone()
		ply.CapturedPiece = &taken
		switch piece.Color {
		case White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, taken)
		case Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, taken)
		}
	}

	g.state.Board.MakeMove(piece, move.To, false)

	if piece.Color == White {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{WhitePly: ply})
	} else if n := len(g.state.MoveHistory); n > 0 && g.state.MoveHistory[n-1].BlackPly == nil {
		g.state.MoveHistory[n-1].BlackPly = &ply
	} else {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{BlackPly: &ply})
	}

	g.state.ToMove = g.state.ToMove.Opponent()
	g.state.IsCheck = g.state.Board.KingIsThreatened(g.state.ToMove)
	g.state.LastMove = &SimpleMove{From: move.From, To: move.To}
}

func (g *Game) stateMessage() ([]byte, error) {
	state, err := json.Marshal(g.state)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(state),
	})
}

// RegisterConnection attaches conn as the player's client and queues the
// current state for it. A player with a live client gets
// ErrDuplicateConnection and the existing client stays registered.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) (*Client, error) {
	return g.registerClient(playerID, conn)
}

func (g *Game) registerClient(playerID string, conn messageWriter) (*Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.colorOf(playerID) == "" && !g.canSpectate() {
		return nil, ErrNotAuthorized
	}
	payload, err := g.stateMessage()
	if err != nil {
		return nil, err
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if _, exists := g.connections.clients[playerID]; exists {
		return nil, ErrDuplicateConnection
	}
	client := newClient(conn)
	g.connections.clients[playerID] = client
	client.enqueue(payload)
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)
	return client, nil
}

// UnregisterConnection removes client if it is still the player's
// registered one, then closes it.
func (g *Game) UnregisterConnection(playerID string, client *Client) {
	g.connections.mu.Lock()
	if g.connections.clients[playerID] == client {
		delete(g.connections.clients, playerID)
	}
	g.connections.mu.Unlock()

	client.Close()
}

// broadcast queues payload for every client and drops the ones that
// cannot take it. Callers hold g.mu.
func (g *Game) broadcast(payload []byte) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for playerID, client := range g.connections.clients {
		if !client.enqueue(payload) {
			log.Printf("game %s: dropping connection for player %s", g.ID, playerID)
			delete(g.connections.clients, playerID)
			go client.Close()
		}
	}
}
