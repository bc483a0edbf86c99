package notify

import (
	"context"
	"fmt"
	"strings"
)

// Notifier delivers voucher credentials to an end customer. Delivery is
// best-effort: issuance never rolls back on a failed send.
type Notifier interface {
	SendCredentials(ctx context.Context, phone, message string) error
}

// VoucherInfo is one credential pair included in a delivery message
type VoucherInfo struct {
	Username string
	Password string
}

// FormatCredentials renders the WhatsApp message body for a batch of vouchers
func FormatCredentials(customerName, profileName, duration string, vouchers []VoucherInfo) string {
	var b strings.Builder

	name := customerName
	if name == "" {
		name = "Pelanggan"
	}
	fmt.Fprintf(&b, "Halo %s, berikut voucher WiFi Anda:\n\n", name)
	fmt.Fprintf(&b, "Paket: %s (%s)\n", profileName, duration)
	for i, v := range vouchers {
		fmt.Fprintf(&b, "%d. Kode: %s\n", i+1, v.Username)
	}
	b.WriteString("\nMasukkan kode sebagai username dan password pada halaman login hotspot. Terima kasih!")

	return b.String()
}
