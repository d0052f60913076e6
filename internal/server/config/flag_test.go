package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "no flags keeps defaults",
			args: []string{"server"},
			want: Config{
				EndpointAddrHTTP:             ":8080",
				SecretKey:                    "secretKey",
				AccessTokenValidityDuration:  15 * time.Minute,
				RefreshTokenValidityDuration: 24 * time.Hour,
			},
		},
		{
			name: "all flags set",
			args: []string{"server", "-a", ":7070", "-s", "flagsecret", "-t", "30", "-r", "2880", "-w", "10"},
			want: Config{
				EndpointAddrHTTP:             ":7070",
				SecretKey:                    "flagsecret",
				AccessTokenValidityDuration:  30 * time.Minute,
				RefreshTokenValidityDuration: 2880 * time.Minute,
				BcryptCost:                   10,
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"server", "-a", ":7070", "-z", "whatever"},
			want: Config{
				EndpointAddrHTTP:             ":7070",
				SecretKey:                    "secretKey",
				AccessTokenValidityDuration:  15 * time.Minute,
				RefreshTokenValidityDuration: 24 * time.Hour,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			defer func() { os.Args = origArgs }()
			os.Args = tt.args

			c := &Config{}
			c.LoadDefaults()
			parseFlags(c)

			assert.Equal(t, tt.want.EndpointAddrHTTP, c.EndpointAddrHTTP)
			assert.Equal(t, tt.want.SecretKey, c.SecretKey)
			assert.Equal(t, tt.want.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
			assert.Equal(t, tt.want.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
			assert.Equal(t, tt.want.BcryptCost, c.BcryptCost)
		})
	}
}
