// Package config loads the client's runtime settings.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults
//  2. GOPHBLOG_* variables from a dotenv file (-env, or ./.env when present)
//     and the process environment, the environment taking precedence
//  3. a JSON file given with -c or -config
//  4. command-line flags
package config
