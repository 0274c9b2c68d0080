// Package script runs executable configuration files.
//
// A [Runner] executes one file and returns the top-level names it defines.
// Filtering those names (only upper-case ones become configuration) is left
// to the caller. Two runners are provided:
//
//   - [ExecRunner] imports the file as a Python module in a python3
//     subprocess and reads its attributes back as JSON.
//   - [LuaRunner] runs the file in an embedded gopher-lua state with the
//     io, os and package libraries left closed.
//
// Failures caused by the file itself are reported as [*Error]; any other
// error means the runner could not do its job.
package script
