package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKeychain is an in-memory Keychain for tests.
type memKeychain struct {
	values map[string]string
	err    error
}

func newMemKeychain() *memKeychain {
	return &memKeychain{values: map[string]string{}}
}

func (m *memKeychain) Get(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.values[name], nil
}

func (m *memKeychain) Set(name, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[name] = value
	return nil
}

func (m *memKeychain) Delete(name string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.values, name)
	return nil
}

func TestResolver_Resolve(t *testing.T) {
	cases := []struct {
		name  string
		token string
		guest string
		mode  Mode
	}{
		{"nothing stored", "", "", ModeSignedOut},
		{"guest marker only", "", "true", ModeGuest},
		{"token only", "jwt", "", ModeAuthenticated},
		{"token shadows guest marker", "jwt", "true", ModeAuthenticated},
		{"unexpected marker value", "", "yes", ModeSignedOut},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kc := newMemKeychain()
			if tc.token != "" {
				kc.values[KeyToken] = tc.token
			}
			if tc.guest != "" {
				kc.values[KeyGuest] = tc.guest
			}

			sess, err := NewResolver(kc).Resolve()
			require.NoError(t, err)
			assert.Equal(t, tc.mode, sess.Mode)
			if tc.mode == ModeAuthenticated {
				assert.Equal(t, tc.token, sess.Token)
			} else {
				assert.Empty(t, sess.Token)
			}
		})
	}
}

func TestResolver_Transitions(t *testing.T) {
	t.Run("login clears the guest marker", func(t *testing.T) {
		kc := newMemKeychain()
		r := NewResolver(kc)

		require.NoError(t, r.GuestLogin())
		require.NoError(t, r.Login("jwt"))

		sess, err := r.Resolve()
		require.NoError(t, err)
		assert.Equal(t, ModeAuthenticated, sess.Mode)
		assert.Empty(t, kc.values[KeyGuest])
	})

	t.Run("guest login keeps a stale token", func(t *testing.T) {
		kc := newMemKeychain()
		r := NewResolver(kc)

		require.NoError(t, r.Login("stale"))
		require.NoError(t, r.GuestLogin())

		// The leftover token still wins; logout is the way out.
		sess, err := r.Resolve()
		require.NoError(t, err)
		assert.Equal(t, ModeAuthenticated, sess.Mode)
	})

	t.Run("logout clears both flags", func(t *testing.T) {
		kc := newMemKeychain()
		r := NewResolver(kc)

		require.NoError(t, r.Login("jwt"))
		require.NoError(t, r.GuestLogin())
		require.NoError(t, r.Logout())

		sess, err := r.Resolve()
		require.NoError(t, err)
		assert.Equal(t, ModeSignedOut, sess.Mode)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		r := NewResolver(newMemKeychain())
		assert.Error(t, r.Login(""))
	})
}

func TestResolver_KeychainFailure(t *testing.T) {
	kc := newMemKeychain()
	kc.err = errors.New("keychain locked")

	_, err := NewResolver(kc).Resolve()
	assert.Error(t, err)
}
