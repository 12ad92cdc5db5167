package templates

const DOCKERIGNORE = `.git
.gitignore
*.md
.snapshots
cache_data
`
