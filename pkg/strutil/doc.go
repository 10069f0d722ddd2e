// Package strutil implements string conversions used by build files:
// boolean parsing with tool-friendly truth tables, XML escaping for
// generated project files, quoted CSV splitting and wildcard translation.
package strutil
