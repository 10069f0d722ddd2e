// Package host classifies the environment the process is running under.
//
// Build systems care about more than runtime.GOOS: a process on a Windows
// machine may be talking to cmd.exe, a Cygwin shell, an MSYS2 shell, or a
// full Linux userland under WSL, and each of those exposes the Windows
// filesystem through a different path scheme. This package collapses that
// zoo into a single immutable [Info] record.
//
// # Detection
//
// Use [Detect] once at startup and pass the result to whatever needs it:
//
//	info := host.Detect()
//	if info.IsWindowsHost {
//	    // Windows tools and drives are reachable
//	}
//
// For tests, construct an Info for any variant directly:
//
//	info := host.NewInfo(host.VariantWSL)
//
// # Invariants
//
// For every Info produced by this package:
//
//   - exactly one variant is set;
//   - IsWSL implies IsLinux (WSL runs a real Linux kernel);
//   - IsWindowsHost is true exactly when the variant is Windows, Cygwin,
//     MSYS2 or WSL.
package host
