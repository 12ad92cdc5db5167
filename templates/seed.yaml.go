package templates

const SEED_YML = `# MapProxy seeding configuration
# See https://mapproxy.org/docs/latest/seed.html

seeds:
  osm_seed:
    caches: [osm_cache]
    grids: [webmercator]
    levels:
      to: 3

cleanups:
  old_osm_tiles:
    caches: [osm_cache]
    remove_before:
      days: 14
`
