// Package config defines the kiwikv server configuration structure.
package config
