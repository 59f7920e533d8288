package main

import (
	"bytes"
	"flag"
	"reflect"
	"strings"
	"testing"
)

func TestNewMainFlags(t *testing.T) {
	newMainFlagsTests := []struct {
		osArgs  []string
		envVars map[string]string
		want    mainFlags
	}{
		{ // defaults
			want: mainFlags{
				httpPort:        80,
				httpsPort:       443,
				userDBDriver:    defaultUserDBDriver,
				chatDBDriver:    defaultChatDBDriver,
				lexiconDBDriver: defaultLexiconDBDriver,
				alphabet:        "en",
				maxGames:        defaultMaxGames,
				idleSec:         defaultIdleSec,
				dbTimeoutSec:    defaultDBTimeoutSec,
			},
		},
		{ // all command line
			osArgs: []string{
				"ignored-binary-name",
				"-http-port=1",
				"-https-port=2",
				"-data-source=3",
				"-user-db-driver=mongo",
				"-chat-db-driver=mongo",
				"-lexicon-db-driver=firestore",
				"-words-file=4",
				"-alphabet=pl",
				"-debug-game",
				"-max-games=5",
				"-game-idle-sec=6",
				"-acme-challenge-token=7",
				"-acme-challenge-key=8",
				"-tls-cert=9",
				"-tls-key=10",
				"-no-tls-redirect",
				"-db-timeout-sec=11",
			},
			want: mainFlags{
				httpPort:        1,
				httpsPort:       2,
				databaseURL:     "3",
				userDBDriver:    "mongo",
				chatDBDriver:    "mongo",
				lexiconDBDriver: "firestore",
				wordsFile:       "4",
				alphabet:        "pl",
				debugGame:       true,
				maxGames:        5,
				idleSec:         6,
				challengeToken:  "7",
				challengeKey:    "8",
				tlsCertFile:     "9",
				tlsKeyFile:      "10",
				noTLSRedirect:   true,
				dbTimeoutSec:    11,
			},
		},
		{ // all environment variables
			envVars: map[string]string{
				"HTTP_PORT":            "1",
				"HTTPS_PORT":           "2",
				"DATABASE_URL":         "3",
				"USER_DB_DRIVER":       "mongo",
				"CHAT_DB_DRIVER":       "mongo",
				"LEXICON_DB_DRIVER":    "firestore",
				"WORDS_FILE":           "4",
				"ALPHABET":             "pl",
				"DEBUG_GAME_MESSAGES":  "",
				"MAX_GAMES":            "5",
				"GAME_IDLE_SECONDS":    "6",
				"ACME_CHALLENGE_TOKEN": "7",
				"ACME_CHALLENGE_KEY":   "8",
				"TLS_CERT_FILE":        "9",
				"TLS_KEY_FILE":         "10",
				"NO_TLS_REDIRECT":      "",
				"DB_TIMEOUT_SEC":       "11",
			},
			want: mainFlags{
				httpPort:        1,
				httpsPort:       2,
				databaseURL:     "3",
				userDBDriver:    "mongo",
				chatDBDriver:    "mongo",
				lexiconDBDriver: "firestore",
				wordsFile:       "4",
				alphabet:        "pl",
				debugGame:       true,
				maxGames:        5,
				idleSec:         6,
				challengeToken:  "7",
				challengeKey:    "8",
				tlsCertFile:     "9",
				tlsKeyFile:      "10",
				noTLSRedirect:   true,
				dbTimeoutSec:    11,
			},
		},
	}
	for i, test := range newMainFlagsTests {
		osLookupEnvFunc := func(key string) (string, bool) {
			v, ok := test.envVars[key]
			return v, ok
		}
		got := newMainFlags(test.osArgs, osLookupEnvFunc)
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("Test %v:\nwanted: %+v\ngot:    %+v", i, test.want, got)
		}
	}
}

func TestNewMainFlagsPortOverride(t *testing.T) {
	envVars := map[string]string{
		"HTTP_PORT":  "1",
		"HTTPS_PORT": "2",
		"PORT":       "3",
	}
	osLookupEnvFunc := func(key string) (string, bool) {
		v, ok := envVars[key]
		return v, ok
	}
	var osArgs []string
	got := newMainFlags(osArgs, osLookupEnvFunc)
	if got.httpPort != -1 || got.httpsPort != 3 {
		t.Errorf("port should override httpsPort and set http port to -1\ngot: %+v", got)
	}
}

func TestUsage(t *testing.T) {
	osLookupEnvFunc := func(key string) (string, bool) {
		return "", false
	}
	var m mainFlags
	fs := m.newFlagSet(osLookupEnvFunc)
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	fs.Init("", flag.ContinueOnError) // override ErrorHandling
	err := fs.Parse([]string{"-h"})
	if err != flag.ErrHelp {
		t.Errorf("wanted ErrHelp, got %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "Usage of") {
		t.Errorf("wanted usage text to describe flag usage, got:\n%v", got)
	}
}
