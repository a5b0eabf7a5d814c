package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cases := map[string]struct {
		content     string
		wantErr     *errors.Error
		wantChainID string
	}{
		"valid genesis": {
			content:     `{"chain_id": "test-chain", "app_state": {"cash": []}}`,
			wantChainID: "test-chain",
		},
		"malformed json": {
			content: `{"chain_id": `,
			wantErr: errors.ErrInput,
		},
		"invalid chain id": {
			content: `{"chain_id": "x", "app_state": {}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			path := filepath.Join(dir, "genesis.json")
			require.NoError(t, ioutil.WriteFile(path, []byte(tc.content), 0600))

			gen, err := LoadGenesis(path)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantChainID, gen.ChainID)
			assert.Contains(t, gen.AppState, "cash")
		})
	}

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))
}

type recordInit struct {
	key  string
	err  error
	seen *[]string
}

func (r recordInit) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	*r.seen = append(*r.seen, r.key)
	if r.err != nil {
		return r.err
	}
	if len(opts[r.key]) == 0 {
		return nil
	}
	return kv.Set([]byte(r.key), opts[r.key])
}

func TestChainInitializers(t *testing.T) {
	var seen []string
	opts := ledger.Options{"a": []byte(`1`), "b": []byte(`2`)}

	db := store.MemStore()
	err := ChainInitializers(
		recordInit{key: "a", seen: &seen},
		recordInit{key: "b", seen: &seen},
	).FromGenesis(opts, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)

	val, err := db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), val)

	seen = nil
	err = ChainInitializers(
		recordInit{key: "a", seen: &seen, err: errors.ErrState},
		recordInit{key: "b", seen: &seen},
	).FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, []string{"a"}, seen)
}
