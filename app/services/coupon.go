package services

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"github.com/shashiranjanraj/revoshop/pkg/metrics"
)

const (
	CouponPrefix = "REVOU10-"
	DiscountRate = 0.10

	couponAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	couponSuffix   = 6
)

// couponPattern accepts the full [A-Z0-9] range, which includes characters
// the generator never emits (0, 1, I, O).
var couponPattern = regexp.MustCompile(`^REVOU10-[A-Z0-9]{6}$`)

// GenerateUniqueCoupon returns REVOU10- followed by six characters drawn
// uniformly from the unambiguous alphabet. Uniqueness is probabilistic.
func GenerateUniqueCoupon() string {
	var b strings.Builder
	b.Grow(len(CouponPrefix) + couponSuffix)
	b.WriteString(CouponPrefix)

	max := big.NewInt(int64(len(couponAlphabet)))
	for i := 0; i < couponSuffix; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic("services: read random: " + err.Error())
		}
		b.WriteByte(couponAlphabet[n.Int64()])
	}
	return b.String()
}

// NormalizeCoupon trims and upper-cases a user-entered code.
func NormalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCoupon reports whether code matches the coupon format, ignoring
// case and surrounding whitespace.
func IsValidCoupon(code string) bool {
	ok := couponPattern.MatchString(NormalizeCoupon(code))
	if ok {
		metrics.CouponChecks.WithLabelValues("valid").Inc()
	} else {
		metrics.CouponChecks.WithLabelValues("invalid").Inc()
	}
	return ok
}

// ApplyDiscount returns the discount amount (not the discounted price).
func ApplyDiscount(subtotal float64, code string) float64 {
	if !IsValidCoupon(code) {
		return 0
	}
	return subtotal * DiscountRate
}
