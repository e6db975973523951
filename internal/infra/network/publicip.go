package network

import (
	"io"
	"net"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// PublicIP discovers the host's external address through several services,
// returning 127.0.0.1 when none of them answers.
func PublicIP() string {
	services := []string{
		"https://api.ipify.org",
		"https://icanhazip.com",
		"https://ifconfig.me",
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 1
	client.Logger = nil

	for _, service := range services {
		resp, err := client.Get(service)
		if err != nil {
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			continue
		}
		ip := strings.TrimSpace(string(body))
		if ip != "" && net.ParseIP(ip) != nil {
			return ip
		}
	}

	return "127.0.0.1"
}
