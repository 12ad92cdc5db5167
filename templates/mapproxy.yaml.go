package templates

const MAPPROXY_YML = `# MapProxy configuration
# See https://mapproxy.org/docs/latest/configuration.html

services:
  demo:
  tms:
    use_grid_names: true
    origin: 'nw'
  kml:
    use_grid_names: true
  wmts:
  wms:
    md:
      title: MapProxy WMS Proxy
      abstract: MapProxy default configuration, replace with your own layers.

layers:
  - name: osm
    title: Omniscale OSM WMS - osm.omniscale.net
    sources: [osm_cache]

caches:
  osm_cache:
    grids: [webmercator]
    sources: [osm_wms]

sources:
  osm_wms:
    type: wms
    req:
      url: https://maps.omniscale.net/wms/demo/default/service?
      layers: osm

grids:
  webmercator:
    base: GLOBAL_WEBMERCATOR

globals:
  cache:
    base_dir: './cache_data'
    lock_dir: './cache_data/locks'
  image:
    resampling_method: bicubic
`
