// Package config loads settings for the tas command.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file: --env-file, or .env in the working directory when
//     present. Variables already in the environment are not overridden.
//  3. The environment: TAS_URL, TAS_CLIENT_KEY, TAS_CLIENT_SECRET,
//     JOBS_URL, JOBS_USER, JOBS_PASSWORD, TAS_DIRECTORY_NAMESPACE,
//     TAS_OUTPUT, TAS_LOG_LEVEL, TAS_LOG_FORMAT (zap, text or json).
//  4. A JSON or YAML file named by -c or --config:
//
//     {
//     "tas_url": "https://tas.example.org/api",
//     "tas_client_key": "svc",
//     "tas_client_secret": "...",
//     "output": "yaml"
//     }
//
//  5. Command-line flags, bound by the command tree.
package config
