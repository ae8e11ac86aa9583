package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/storage"
)

func TestPublicURL(t *testing.T) {
	r := storage.NewResolver("https://files.ledgerdesk.test/public/")

	require.Equal(t, "https://files.ledgerdesk.test/public/kyc/front.jpg", r.PublicURL("kyc/front.jpg"))
	require.Equal(t, "https://files.ledgerdesk.test/public/kyc/front.jpg", r.PublicURL("/kyc/front.jpg"))
	require.Equal(t, "", r.PublicURL(""))
}

func TestPublicURLWithoutBase(t *testing.T) {
	r := storage.NewResolver("")
	require.Equal(t, "", r.PublicURL("kyc/front.jpg"))
}
