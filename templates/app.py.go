package templates

const APP_PY = `# WSGI entry point for MapProxy, served by uwsgi in the base run mode.

from mapproxy.wsgiapp import make_wsgi_app

application = make_wsgi_app('/mapproxy/mapproxy.yaml', reloader=False)
`
