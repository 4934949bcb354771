// Package tsconfig reads the TypeScript compiler configuration the build
// pipeline depends on: the output directory, the source root and the
// module-resolution path aliases. The file is only ever read.
package tsconfig
