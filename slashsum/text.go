package slashsum

import "fmt"

// Set at build time with -ldflags "-X ...".
var (
	Version = "dev"
	Commit  = "unknown"
)

const helpText = `Slashsum - Calculate multiple checksums simultaneously

USAGE:
    slashsum <FILE> [OPTIONS]

OPTIONS:
    --save       Save checksums to a .checksum file
    -h, --help   Print help information
    --version    Print version information

CONFIGURATION:
    $SLASHSUM_CONFIG or $XDG_CONFIG_HOME/slashsum/config.yaml
    (chunk_size, queue_capacity, algorithms, format, log_level)
    $SLASHSUM_LOG_LEVEL overrides log_level

EXAMPLES:
    slashsum file.txt            # Calculate and display checksums
    slashsum file.txt --save     # Save results to file.txt.checksum
    slashsum --version           # Display version and license information
    slashsum -h                  # Show this help message
`

const licenseText = `MIT License

Copyright (c) 2025-2026 Nicolas DEOUX
                   NDXDev@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

func versionText() string {
	return fmt.Sprintf("slashsum %s - %s\n\n%s", Version, Commit, licenseText)
}
