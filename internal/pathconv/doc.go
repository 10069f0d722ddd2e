// Package pathconv translates path strings between Windows and POSIX
// representations and prepares paths for shell consumption.
//
// The same file is reachable as "C:\code\x.txt" from cmd.exe,
// "/mnt/c/code/x.txt" from WSL, "/cygdrive/c/code/x.txt" from Cygwin and
// "/c/code/x.txt" from MSYS2. [Translator] dispatches to the helper tool
// the active variant ships (wslpath or cygpath); on hosts with a single
// path scheme both directions are the identity function.
//
//	tr := pathconv.NewTranslator(host.Detect())
//	win, err := tr.ToWindows("/mnt/c/code")
//
// The pure string helpers (slash conversion, quoting, PATH packing) have no
// platform dependence and never fail.
package pathconv
