package templates

const UWSGI_INI = `[uwsgi]
http-socket = :8080
master = true
processes = 4
threads = 2
wsgi-file = /mapproxy/app.py
enable-threads = true
lazy-apps = true
need-app = true
die-on-term = true
py-autoreload = 0
`
