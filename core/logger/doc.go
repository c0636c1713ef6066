// Package logger records structured events about commands run by the shell
// as newline delimited JSON.
package logger
