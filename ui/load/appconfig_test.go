package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ltp456/uwallet/libwallet/utils"
)

func TestAppConfigDefaults(t *testing.T) {
	cfg, err := AppConfigFromFile(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	net, endpoint, err := cfg.Values().NetParams()
	require.NoError(t, err)
	require.Equal(t, utils.PolkadotParams, net)
	require.Equal(t, utils.PolkadotParams.DefaultEndpoint, endpoint)
}

func TestAppConfigUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := AppConfigFromFile(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Update(func(v *AppConfigValues) {
		v.NetType = "ksm"
		v.RPCEndpoint = "wss://example.invalid"
	}))

	cfg, err = AppConfigFromFile(path)
	require.NoError(t, err)
	net, endpoint, err := cfg.Values().NetParams()
	require.NoError(t, err)
	require.Equal(t, utils.Kusama, net.Network)
	require.Equal(t, "wss://example.invalid", endpoint)

	cfg.Update(func(v *AppConfigValues) { v.NetType = "nowhere" })
	_, _, err = cfg.Values().NetParams()
	require.Error(t, err)
}

func TestAppConfigRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))
	_, err := AppConfigFromFile(path)
	require.Error(t, err)
}
