package templates

const DOCKERFILE = `# syntax=docker/dockerfile:1

FROM golang:1.20-bullseye AS build

WORKDIR /src

COPY go.mod ./
RUN go mod download

COPY . .
RUN CGO_ENABLED=0 go build -o /out/mapboot .

FROM python:{{.PythonVersion}}-slim-bullseye

ARG MAPPROXY_VERSION={{.MapproxyVersion}}
ARG UWSGI_VERSION={{.UwsgiVersion}}

RUN apt-get update && apt-get install -y --no-install-recommends \
        build-essential \
        libgdal-dev \
        libgeos-dev \
        libproj-dev \
        libjpeg-dev \
        zlib1g-dev \
    && rm -rf /var/lib/apt/lists/*

RUN pip install --no-cache-dir \
        MapProxy==${MAPPROXY_VERSION} \
        uwsgi==${UWSGI_VERSION} \
        Pillow \
        requests

WORKDIR /mapproxy

COPY app.py ./
COPY --from=build /out/mapboot /usr/local/bin/mapboot

RUN mkdir -p /mapproxy/cache_data

EXPOSE 8080

HEALTHCHECK --interval=30s --timeout=5s --start-period=10s CMD ["mapboot", "status"]

ENTRYPOINT ["mapboot"]
CMD ["base"]
`
