package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCredentials(t *testing.T) {
	msg := FormatCredentials("Budi", "3 Jam", "3h", []VoucherInfo{
		{Username: "4821", Password: "4821"},
		{Username: "9034", Password: "9034"},
	})

	assert.Contains(t, msg, "Halo Budi")
	assert.Contains(t, msg, "3 Jam")
	assert.Contains(t, msg, "1. Kode: 4821")
	assert.Contains(t, msg, "2. Kode: 9034")
}

func TestFormatCredentialsAnonymousCustomer(t *testing.T) {
	msg := FormatCredentials("", "1 Hari", "1d", []VoucherInfo{{Username: "5512", Password: "5512"}})

	assert.Contains(t, msg, "Halo Pelanggan")
	assert.Contains(t, msg, "5512")
}
