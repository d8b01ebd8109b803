package activity

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/libwallet/walletdata"
	"github.com/ltp456/uwallet/ui/load"
)

const (
	testPhrase   = "legal winner thank year wave sausage worth useful legal winner thank yellow"
	testPassword = "correct horse"
	waitFor      = 5 * time.Second
	tick         = 5 * time.Millisecond
)

type recordingNotifier struct {
	mtx      sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) error {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	return len(n.messages)
}

// newTestLoad returns a Load backed by memory state and a temporary
// database. No client is set.
func newTestLoad(t *testing.T) *load.Load {
	t.Helper()
	dir := t.TempDir()

	db, err := walletdata.Initialize(filepath.Join(dir, walletdata.DbName))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg, err := load.AppConfigFromFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)

	state, err := load.NewAppState(nil)
	require.NoError(t, err)

	executor := app.NewExecutor(context.Background(), 0)
	t.Cleanup(executor.Shutdown)

	return &load.Load{
		Theme:     load.NewTheme(),
		Printer:   load.NewPrinter(),
		AppInfo:   load.StartApp("test", time.Now()),
		Config:    cfg,
		State:     state,
		WL:        load.NewWalletLoad(state, utils.PolkadotParams),
		DB:        db,
		Net:       utils.PolkadotParams,
		Navigator: app.NewNavigator(nil),
		Executor:  executor,
		Notifier:  new(recordingNotifier),
	}
}

// unlockTestWallet sets the password and saves testPhrase.
func unlockTestWallet(t *testing.T, l *load.Load) {
	t.Helper()
	require.NoError(t, l.WL.SetPassword(testPassword, testPassword))
	require.NoError(t, l.WL.SavePhrase(testPhrase))
}

// waitForResult waits until q holds a task result and applies it.
func waitForResult(t *testing.T, q *resultQueue) {
	t.Helper()
	require.Eventually(t, func() bool { return len(q.results) > 0 }, waitFor, tick)
	q.drain()
}

// expectNavigation waits for a navigation request and returns its target.
func expectNavigation(t *testing.T, l *load.Load) app.ActivityID {
	t.Helper()
	require.Eventually(t, func() bool { return l.Navigator.Pending() > 0 }, waitFor, tick)
	id, ok := l.Navigator.TryRecv()
	require.True(t, ok)
	return id
}

// testNode answers the JSON-RPC calls made by libwallet.Client. Every
// account holds free planck.
type testNode struct {
	free uint64

	mtx       sync.Mutex
	submitted int
}

func (n *testNode) submissions() int {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	return n.submitted
}

func (n *testNode) serve(t *testing.T) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64        `json:"id"`
			Method string        `json:"method"`
			Params []interface{} `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var result interface{}
		switch req.Method {
		case "state_getRuntimeVersion":
			result = map[string]interface{}{"specName": "polkadot", "specVersion": 9360, "transactionVersion": 19}
		case "chain_getBlockHash":
			result = "0x" + hex.EncodeToString(make([]byte, 32))
		case "state_getStorage":
			account := make([]byte, 80)
			binary.LittleEndian.PutUint32(account, 3)
			binary.LittleEndian.PutUint64(account[16:], n.free)
			result = "0x" + hex.EncodeToString(account)
		case "author_submitExtrinsic":
			n.mtx.Lock()
			n.submitted++
			n.mtx.Unlock()
			result = "0x1234"
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "result": result})
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func connectTestNode(t *testing.T, l *load.Load, node *testNode) {
	t.Helper()
	client, err := libwallet.NewClient(context.Background(), node.serve(t), l.Net)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	l.Client = client
}
