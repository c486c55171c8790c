package controller

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/benbeisheim/chessmoves/internal/model"
	"github.com/benbeisheim/chessmoves/internal/service"
	"github.com/benbeisheim/chessmoves/internal/ws"
)

func newTestGame(t *testing.T) (*WebSocketController, *service.GameService, string) {
	t.Helper()
	gameService := service.NewGameService(service.NewGameManager())
	gameID, err := gameService.CreateGame(model.GameModeWhiteBottom)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	for _, player := range []string{"alice", "bob"} {
		if _, err := gameService.JoinGame(gameID, player); err != nil {
			t.Fatalf("join %s: %v", player, err)
		}
	}
	return NewWebSocketController(gameService), gameService, gameID
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func TestHandleMessage(t *testing.T) {
	tests := []struct {
		name      string
		playerID  string
		msg       func(t *testing.T) ws.Message
		wantErr   error
		anyErr    bool
		wantMoves int
		toMove    model.Color
	}{
		{
			name:     "legal moves of e2 pawn",
			playerID: "alice",
			msg: func(t *testing.T) ws.Message {
				return ws.Message{Type: ws.MessageTypeLegalMoves, Payload: rawJSON(t, model.Position{X: 4, Y: 6})}
			},
			wantMoves: 2,
			toMove:    model.White,
		},
		{
			name:     "legal moves of empty square",
			playerID: "alice",
			msg: func(t *testing.T) ws.Message {
				return ws.Message{Type: ws.MessageTypeLegalMoves, Payload: rawJSON(t, model.Position{X: 4, Y: 4})}
			},
			wantErr: model.ErrNoPiece,
			toMove:  model.White,
		},
		{
			name:     "move",
			playerID: "alice",
			msg: func(t *testing.T) ws.Message {
				return ws.Message{Type: ws.MessageTypeMove, Payload: rawJSON(t, model.WSMove{
					From: model.Position{X: 4, Y: 6}, To: model.Position{X: 4, Y: 4},
				})}
			},
			toMove: model.Black,
		},
		{
			name:     "illegal move",
			playerID: "alice",
			msg: func(t *testing.T) ws.Message {
				return ws.Message{Type: ws.MessageTypeMove, Payload: rawJSON(t, model.WSMove{
					From: model.Position{X: 4, Y: 6}, To: model.Position{X: 4, Y: 3},
				})}
			},
			wantErr: model.ErrIllegalMove,
			toMove:  model.White,
		},
		{
			name:     "move out of turn",
			playerID: "bob",
			msg: func(t *testing.T) ws.Message {
				return ws.Message{Type: ws.MessageTypeMove, Payload: rawJSON(t, model.WSMove{
					From: model.Position{X: 4, Y: 1}, To: model.Position{X: 4, Y: 3},
				})}
			},
			wantErr: model.ErrNotYourTurn,
			toMove:  model.White,
		},
		{
			name:     "malformed payload",
			playerID: "alice",
			msg: func(t *testing.T) ws.Message {
				return ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`"e2e4"`)}
			},
			anyErr: true,
			toMove: model.White,
		},
		{
			name:     "unknown type",
			playerID: "alice",
			msg: func(t *testing.T) ws.Message {
				return ws.Message{Type: "resign"}
			},
			anyErr: true,
			toMove: model.White,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wsc, gameService, gameID := newTestGame(t)

			reply, err := wsc.handleMessage(gameID, tt.playerID, tt.msg(t))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatalf("expected an error, got reply %+v", reply)
				}
			case err != nil:
				t.Fatalf("err -- %s", err)
			}

			if tt.wantMoves > 0 {
				if reply == nil || reply.Type != ws.MessageTypeLegalMoves {
					t.Fatalf("got reply %+v want legalMoves", reply)
				}
				var got model.LegalMovesReply
				if err := json.Unmarshal(reply.Payload, &got); err != nil {
					t.Fatalf("decode reply: %v", err)
				}
				if len(got.Moves) != tt.wantMoves {
					t.Fatalf("got %v want %d moves", got.Moves, tt.wantMoves)
				}
			} else if reply != nil {
				t.Fatalf("unexpected reply %+v", reply)
			}

			state, err := gameService.GetGameState(gameID)
			if err != nil {
				t.Fatalf("err -- %s", err)
			}
			if state.ToMove != tt.toMove {
				t.Fatalf("to move: got %s want %s", state.ToMove, tt.toMove)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	msg := errorMessage(model.ErrIllegalMove)
	if msg.Type != ws.MessageTypeError {
		t.Fatalf("type: got %s want %s", msg.Type, ws.MessageTypeError)
	}
	var text string
	if err := json.Unmarshal(msg.Payload, &text); err != nil {
		t.Fatalf("payload %s: %v", msg.Payload, err)
	}
	if text != model.ErrIllegalMove.Error() {
		t.Fatalf("payload: got %q", text)
	}
}
