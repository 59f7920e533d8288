package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/jacobpatterson1549/selene-bananas/db"
	"github.com/jacobpatterson1549/selene-bananas/db/dbtest"
	gamedb "github.com/jacobpatterson1549/selene-bananas/db/game"
)

func TestGameBackendCreateGame(t *testing.T) {
	mockDB := dbtest.MockDatabase{
		QueryFunc: func(ctx context.Context, q db.Query) db.Scanner {
			return dbtest.MockScanner{
				ScanFunc: func(dest ...interface{}) error {
					if id, ok := dest[0].(*int); ok {
						*id = 7
					}
					return nil
				},
			}
		},
	}
	gb := NewGameBackend(mockDB)
	id, err := gb.CreateGame(context.Background(), gamedb.Record{Status: 0, MaxPlayers: 2, CreatedAt: 100})
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if id != 7 {
		t.Errorf("wanted id 7, got %v", id)
	}
}

func TestGameBackendRecordMove(t *testing.T) {
	recordMoveTests := []struct {
		execErr error
		wantOk  bool
	}{
		{execErr: fmt.Errorf("problem recording move")},
		{wantOk: true},
	}
	for i, test := range recordMoveTests {
		mockDB := dbtest.MockDatabase{
			ExecFunc: func(ctx context.Context, queries ...db.Query) error {
				return test.execErr
			},
		}
		gb := NewGameBackend(mockDB)
		err := gb.RecordMove(context.Background(), gamedb.MoveRecord{GameID: 7, Number: 1, PlayerName: "selene", Word: "CAT", Score: 5})
		switch {
		case err != nil && test.wantOk:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case err == nil && !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		}
	}
}
