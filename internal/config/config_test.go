package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("COUPON_CODE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.EqualValues(t, 0, cfg.Standard.ShippingCost)
	assert.EqualValues(t, 14, cfg.Standard.SizeThreshold)
	assert.EqualValues(t, 2400, cfg.Custom.BasePrice)
	assert.EqualValues(t, 60, cfg.Custom.ShippingCost)
	assert.EqualValues(t, 16, cfg.Custom.SizeThreshold)
	assert.EqualValues(t, 200, cfg.Custom.Surcharge)
	assert.True(t, cfg.Coupon.Policy().Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COUPON_CODE", "SPRING")
	t.Setenv("COUPON_DISCOUNT", "150")
	t.Setenv("COUPON_ENABLED", "false")
	t.Setenv("CUSTOM_SIZE_THRESHOLD", "16.5")
	t.Setenv("SUBMIT_PULSE_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	policy := cfg.Coupon.Policy()
	assert.Equal(t, "SPRING", policy.Code)
	assert.EqualValues(t, 150, policy.DiscountAmount)
	assert.False(t, policy.Enabled)
	assert.Equal(t, 16.5, cfg.Custom.SizeThreshold)
	assert.Equal(t, int64(250), cfg.SubmitPulse.Milliseconds())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsNegativeAmounts(t *testing.T) {
	cfg := &Config{StoreDriver: StoreDriverMemory}
	cfg.Custom.Surcharge = -1
	assert.Error(t, cfg.Validate())
}
