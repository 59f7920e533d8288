package main

import (
	"context"
	crypto_rand "crypto/rand"
	"database/sql"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jacobpatterson1549/selene-bananas/db"
	"github.com/jacobpatterson1549/selene-bananas/db/bcrypt"
	"github.com/jacobpatterson1549/selene-bananas/db/firestore"
	"github.com/jacobpatterson1549/selene-bananas/db/mongo"
	"github.com/jacobpatterson1549/selene-bananas/db/postgres"
	dbsql "github.com/jacobpatterson1549/selene-bananas/db/sql"
	"github.com/jacobpatterson1549/selene-bananas/db/user"
	"github.com/jacobpatterson1549/selene-bananas/game/chat"
	"github.com/jacobpatterson1549/selene-bananas/game/engine"
	"github.com/jacobpatterson1549/selene-bananas/game/registry"
	"github.com/jacobpatterson1549/selene-bananas/game/socket"
	"github.com/jacobpatterson1549/selene-bananas/game/tile"
	"github.com/jacobpatterson1549/selene-bananas/game/word"
	"github.com/jacobpatterson1549/selene-bananas/server"
	"github.com/jacobpatterson1549/selene-bananas/server/auth"
	"github.com/jacobpatterson1549/selene-bananas/server/certificate"
	_ "github.com/lib/pq" // register "postgres" database driver from package init() function
)

// logAdapter adapts a *log.Logger to the server/log.Logger interface threaded through every component.
type logAdapter struct {
	*log.Logger
}

func (l logAdapter) Printf(format string, v ...interface{}) {
	l.Logger.Printf(format, v...)
}

// serverConfig wires every component described by m into a server.Config/Parameters pair.
func serverConfig(ctx context.Context, m mainFlags, log *log.Logger) (*server.Config, *server.Parameters, error) {
	lg := logAdapter{log}
	timeFunc := func() int64 {
		return time.Now().UTC().Unix()
	}
	tokenizerCfg := tokenizerConfig(crypto_rand.Reader, timeFunc)
	tokenizer, err := tokenizerCfg.NewTokenizer()
	if err != nil {
		return nil, nil, err
	}
	if len(m.databaseURL) == 0 {
		return nil, nil, fmt.Errorf("missing data-source uri")
	}
	d, err := sqlDatabase(m)
	if err != nil {
		return nil, nil, err
	}
	ub, err := userBackend(ctx, m, d)
	if err != nil {
		return nil, nil, err
	}
	ud, err := user.NewDao(ub, bcrypt.NewPasswordHandler())
	if err != nil {
		return nil, nil, err
	}
	dist, err := distribution(m.alphabet)
	if err != nil {
		return nil, nil, err
	}
	lex, err := lexicon(ctx, m, d)
	if err != nil {
		return nil, nil, err
	}
	registryCfg := registryConfig(m, lg, dist, lex, d, ud, timeFunc)
	reg, err := registryCfg.NewManager()
	if err != nil {
		return nil, nil, err
	}
	persister, err := chatPersister(ctx, m, d)
	if err != nil {
		return nil, nil, err
	}
	hub, err := chatHubConfig(lg, persister, timeFunc).NewHub()
	if err != nil {
		return nil, nil, err
	}
	cfg := server.Config{
		HTTPPort:      m.httpPort,
		HTTPSPort:     m.httpsPort,
		StopDur:       time.Second,
		TLSCertFile:   m.tlsCertFile,
		TLSKeyFile:    m.tlsKeyFile,
		Challenge:     certificate.Challenge{Token: m.challengeToken, Key: m.challengeKey},
		NoTLSRedirect: m.noTLSRedirect,
	}
	params := server.Parameters{
		Log:       lg,
		Tokenizer: tokenizer,
		Registry:  reg,
		ChatHub:   hub,
		SocketCfg: socketConfig(m, lg, timeFunc),
	}
	return &cfg, &params, nil
}

func tokenizerConfig(keyReader io.Reader, timeFunc func() int64) auth.TokenizerConfig {
	return auth.TokenizerConfig{
		KeyReader: keyReader,
		TimeFunc:  timeFunc,
		ValidSec:  int64((24 * time.Hour).Seconds()), // 1 day
	}
}

// sqlDatabase opens the postgres connection pool and wraps it as a db.Database.
func sqlDatabase(m mainFlags) (db.Database, error) {
	sqlDB, err := sql.Open("postgres", m.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	cfg := db.Config{
		QueryPeriod: time.Duration(m.dbTimeoutSec) * time.Second,
	}
	return dbsql.NewDatabase(cfg, sqlDB)
}

// userBackend selects the user account storage driver named by m.userDBDriver.
// The postgres driver reuses the already-opened SQL database; mongo and
// firestore open their own client against m.databaseURL.
func userBackend(ctx context.Context, m mainFlags, d db.Database) (user.Backend, error) {
	switch m.userDBDriver {
	case "", "postgres":
		return postgres.NewUserBackend(d), nil
	case "mongo":
		cfg := db.Config{QueryPeriod: time.Duration(m.dbTimeoutSec) * time.Second}
		return mongo.NewUserBackend(ctx, cfg, m.databaseURL)
	case "firestore":
		cfg := db.Config{QueryPeriod: time.Duration(m.dbTimeoutSec) * time.Second}
		return firestore.NewUserBackend(ctx, cfg, m.databaseURL)
	default:
		return nil, fmt.Errorf("unknown user-db-driver %q, want 'postgres', 'mongo', or 'firestore'", m.userDBDriver)
	}
}

// distribution selects the tile distribution named by alphabet.
func distribution(alphabet string) (tile.Distribution, error) {
	switch alphabet {
	case "", "en", "english":
		return tile.English, nil
	case "pl", "polish":
		return tile.Polish, nil
	default:
		return tile.Distribution{}, fmt.Errorf("unknown alphabet %q, want 'en' or 'pl'", alphabet)
	}
}

// lexicon creates the word-validity source: an in-memory Checker loaded from
// m.wordsFile if given, otherwise the database dictionary driver named by
// m.lexiconDBDriver.
func lexicon(ctx context.Context, m mainFlags, d db.Database) (engine.Lexicon, error) {
	if len(m.wordsFile) > 0 {
		f, err := os.Open(m.wordsFile)
		if err != nil {
			return nil, fmt.Errorf("opening words file: %w", err)
		}
		defer f.Close()
		return word.NewChecker(f), nil
	}
	switch m.lexiconDBDriver {
	case "", "postgres":
		return postgres.NewLexiconBackend(ctx, d), nil
	case "firestore":
		cfg := db.Config{QueryPeriod: time.Duration(m.dbTimeoutSec) * time.Second}
		return firestore.NewDictionaryBackend(ctx, cfg, m.databaseURL)
	default:
		return nil, fmt.Errorf("unknown lexicon-db-driver %q, want 'postgres' or 'firestore'", m.lexiconDBDriver)
	}
}

// chatPersister creates the chat history store named by m.chatDBDriver.
func chatPersister(ctx context.Context, m mainFlags, d db.Database) (chat.Persister, error) {
	switch m.chatDBDriver {
	case "", "postgres":
		return postgres.NewChatBackend(d), nil
	case "mongo":
		cfg := db.Config{QueryPeriod: time.Duration(m.dbTimeoutSec) * time.Second}
		return mongo.NewChatBackend(ctx, cfg, m.databaseURL)
	default:
		return nil, fmt.Errorf("unknown chat-db-driver %q, want 'postgres' or 'mongo'", m.chatDBDriver)
	}
}

func registryConfig(m mainFlags, log logAdapter, dist tile.Distribution, lex engine.Lexicon, d db.Database, ud *user.Dao, timeFunc func() int64) registry.Config {
	gameCfg := engine.Config{
		MaxPlayers:   4,
		Distribution: dist,
		Lexicon:      lex,
		Log:          log,
		Shuffle: func(n int, swap func(i, j int)) {
			rand.Shuffle(n, swap)
		},
		Now: timeFunc,
	}
	return registry.Config{
		Log:        log,
		MaxGames:   m.maxGames,
		GameConfig: gameCfg,
		IdlePeriod: time.Duration(m.idleSec) * time.Second,
		Recorder:   postgres.NewGameBackend(d),
		Points:     ud,
	}
}

func chatHubConfig(log logAdapter, persister chat.Persister, timeFunc func() int64) chat.Config {
	return chat.Config{
		Persister: persister,
		Log:       log,
		Now:       timeFunc,
	}
}

func socketConfig(m mainFlags, log logAdapter, timeFunc func() int64) socket.Config {
	return socket.Config{
		Debug:          m.debugGame,
		Log:            log,
		TimeFunc:       timeFunc,
		PongPeriod:     60 * time.Second,
		PingPeriod:     54 * time.Second,
		IdlePeriod:     15 * time.Minute,
		HTTPPingPeriod: 10 * time.Minute,
	}
}
