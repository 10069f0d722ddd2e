// Package msdev discovers installed Microsoft development tools.
//
// The scanner reads the 32-bit HKEY_LOCAL_MACHINE registry view to
// find Visual Studio 2003 through current releases and the Windows 8
// and Windows 10 SDKs, then probes the filesystem for the compilers,
// IDE binaries and
// header/library folders each install actually ships. On Windows the
// registry is read natively; on WSL, Cygwin and MSYS2 it is read by
// shelling out to reg.exe. On macOS and plain Linux every query
// reports an empty result rather than an error.
package msdev
