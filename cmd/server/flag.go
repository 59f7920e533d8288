package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

const (
	environmentVariableHTTPPort       = "HTTP_PORT"
	environmentVariableHTTPSPort      = "HTTPS_PORT"
	environmentVariablePort           = "PORT"
	environmentVariableDatabaseURL    = "DATABASE_URL"
	environmentVariableUserDBDriver   = "USER_DB_DRIVER"
	environmentVariableChatDBDriver   = "CHAT_DB_DRIVER"
	environmentVariableLexiconDBDriver = "LEXICON_DB_DRIVER"
	environmentVariableWordsFile      = "WORDS_FILE"
	environmentVariableAlphabet       = "ALPHABET"
	environmentVariableDebugGame      = "DEBUG_GAME_MESSAGES"
	environmentVariableMaxGames       = "MAX_GAMES"
	environmentVariableIdleSec        = "GAME_IDLE_SECONDS"
	environmentVariableDBTimeoutSec   = "DB_TIMEOUT_SEC"
	environmentVariableChallengeToken = "ACME_CHALLENGE_TOKEN"
	environmentVariableChallengeKey   = "ACME_CHALLENGE_KEY"
	environmentVariableTLSCertFile    = "TLS_CERT_FILE"
	environmentVariableTLSKeyFile     = "TLS_KEY_FILE"
	environmentVariableNoTLSRedirect  = "NO_TLS_REDIRECT"
)

const (
	defaultMaxGames      = 128
	defaultIdleSec       = 60 * 60 // 1 hour
	defaultDBTimeoutSec  = 5
	defaultUserDBDriver     = "postgres"
	defaultChatDBDriver     = "postgres"
	defaultLexiconDBDriver  = "postgres"
)

type mainFlags struct {
	httpPort       int
	httpsPort      int
	databaseURL    string
	userDBDriver   string
	chatDBDriver   string
	lexiconDBDriver string
	wordsFile      string
	alphabet       string
	debugGame      bool
	maxGames       int
	idleSec        int
	dbTimeoutSec   int
	challengeToken string
	challengeKey   string
	tlsCertFile    string
	tlsKeyFile     string
	noTLSRedirect  bool
}

func usage(fs *flag.FlagSet) {
	envVars := []string{
		environmentVariableHTTPPort,
		environmentVariableHTTPSPort,
		environmentVariablePort,
		environmentVariableDatabaseURL,
		environmentVariableUserDBDriver,
		environmentVariableChatDBDriver,
		environmentVariableLexiconDBDriver,
		environmentVariableWordsFile,
		environmentVariableAlphabet,
		environmentVariableDebugGame,
		environmentVariableMaxGames,
		environmentVariableIdleSec,
		environmentVariableDBTimeoutSec,
		environmentVariableChallengeToken,
		environmentVariableChallengeKey,
		environmentVariableTLSCertFile,
		environmentVariableTLSKeyFile,
		environmentVariableNoTLSRedirect,
	}
	fmt.Fprintln(fs.Output(), "Starts the server")
	fmt.Fprintln(fs.Output(), "Reads environment variables when possible:", fmt.Sprintf("[%s]", strings.Join(envVars, ",")))
	fmt.Fprintln(fs.Output(), fmt.Sprintf("Usage of %s:", fs.Name()))
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
func (m *mainFlags) newFlagSet(osLookupEnvFunc func(string) (string, bool)) *flag.FlagSet {
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	fs.Usage = func() { usage(fs) }

	envOrDefault := func(key, defaultValue string) string {
		if envValue, ok := osLookupEnvFunc(key); ok {
			return envValue
		}
		return defaultValue
	}
	envOrDefaultInt := func(key string, defaultValue int) int {
		v1 := envOrDefault(key, strconv.Itoa(defaultValue))
		if v2, err := strconv.Atoi(v1); err == nil {
			return v2
		}
		return defaultValue
	}
	envPresent := func(key string) bool {
		_, ok := osLookupEnvFunc(key)
		return ok
	}
	fs.StringVar(&m.databaseURL, "data-source", envOrDefault(environmentVariableDatabaseURL, ""), "The data source to connect the user database driver to: a PostgreSQL connection URI, a mongodb:// URI, or a Google Cloud project ID for firestore.")
	fs.StringVar(&m.userDBDriver, "user-db-driver", envOrDefault(environmentVariableUserDBDriver, defaultUserDBDriver), "The user account storage driver to use: 'postgres', 'mongo', or 'firestore'.")
	fs.StringVar(&m.chatDBDriver, "chat-db-driver", envOrDefault(environmentVariableChatDBDriver, defaultChatDBDriver), "The chat message history storage driver to use: 'postgres' or 'mongo'.")
	fs.StringVar(&m.lexiconDBDriver, "lexicon-db-driver", envOrDefault(environmentVariableLexiconDBDriver, defaultLexiconDBDriver), "The word-validity storage driver to use when -words-file is not set: 'postgres' or 'firestore'.")
	fs.IntVar(&m.httpPort, "http-port", envOrDefaultInt(environmentVariableHTTPPort, 80), "The TCP port for server http requests.  All traffic is redirected to the https port.")
	fs.IntVar(&m.httpsPort, "https-port", envOrDefaultInt(environmentVariableHTTPSPort, 443), "The TCP port for server https requests.")
	fs.StringVar(&m.wordsFile, "words-file", envOrDefault(environmentVariableWordsFile, ""), "The list of valid lower-case words that can be used.  If empty, no in-memory lexicon is loaded and the database dictionary backend is used instead.")
	fs.StringVar(&m.alphabet, "alphabet", envOrDefault(environmentVariableAlphabet, "en"), "The tile distribution to deal games from: 'en' or 'pl'.")
	fs.BoolVar(&m.debugGame, "debug-game", envPresent(environmentVariableDebugGame), "Logs game message types in the console if present.")
	fs.IntVar(&m.maxGames, "max-games", envOrDefaultInt(environmentVariableMaxGames, defaultMaxGames), "The maximum number of games that can be created at once.")
	fs.IntVar(&m.idleSec, "game-idle-sec", envOrDefaultInt(environmentVariableIdleSec, defaultIdleSec), "The number of seconds a game can run with no activity before its actor exits.")
	fs.IntVar(&m.dbTimeoutSec, "db-timeout-sec", envOrDefaultInt(environmentVariableDBTimeoutSec, defaultDBTimeoutSec), "The number of seconds a database query may run before timing out.")
	fs.StringVar(&m.challengeToken, "acme-challenge-token", envOrDefault(environmentVariableChallengeToken, ""), "The ACME HTTP-01 Challenge token used to get a certificate.")
	fs.StringVar(&m.challengeKey, "acme-challenge-key", envOrDefault(environmentVariableChallengeKey, ""), "The ACME HTTP-01 Challenge key used to get a certificate.")
	fs.StringVar(&m.tlsCertFile, "tls-cert", envOrDefault(environmentVariableTLSCertFile, ""), "The absolute path of the certificate file to use for TLS.")
	fs.StringVar(&m.tlsKeyFile, "tls-key", envOrDefault(environmentVariableTLSKeyFile, ""), "The absolute path of the key file to use for TLS.")
	fs.BoolVar(&m.noTLSRedirect, "no-tls-redirect", envPresent(environmentVariableNoTLSRedirect), "Disables redirecting http traffic to https, for environments that terminate TLS upstream.")
	if port, ok := osLookupEnvFunc(environmentVariablePort); ok {
		if n, err := strconv.Atoi(port); err == nil {
			m.httpsPort = n
			m.httpPort = -1
		}
	}
	return fs
}

// newMainFlags creates a new, populated mainFlags structure.
// Fields are populated from command line arguments.
// If fields are not specified on the command line, environment variable values are used before defaulting to other defaults.
func newMainFlags(osArgs []string, osLookupEnvFunc func(string) (string, bool)) mainFlags {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	programArgs := osArgs[1:]
	var m mainFlags
	fs := m.newFlagSet(osLookupEnvFunc)
	fs.Parse(programArgs)
	return m
}
