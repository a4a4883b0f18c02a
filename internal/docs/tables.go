package docs

// Sections documents top-level sections and nested subsections.
var Sections = newTable(
	Entry{
		Name:    "global",
		Detail:  "Global options",
		Doc:     "Global options of the dae daemon: listening port, interfaces, connectivity checks, dial mode and logging.",
		Snippet: "global {\n\t$0\n}",
	},
	Entry{
		Name:    "subscription",
		Detail:  "Subscriptions",
		Doc:     "Subscriptions defined here will be resolved as nodes and merged as a part of the global node pool.\n\nSupport to give the subscription a tag, and filter nodes from a given subscription in the group section with `subtag(...)`.",
		Snippet: "subscription {\n\t${1:my_sub}: '${2:https://}'\n}",
	},
	Entry{
		Name:    "node",
		Detail:  "Nodes",
		Doc:     "Nodes defined here will be merged as a part of the global node pool. Give a node a tag to select it with `name(...)`.",
		Snippet: "node {\n\t${1:my_node}: '${2:socks5://}'\n}",
	},
	Entry{
		Name:    "dns",
		Detail:  "DNS",
		Doc:     "DNS upstreams and DNS routing.\n\nSee https://github.com/daeuniverse/dae/blob/main/docs/en/configuration/dns.md.",
		Snippet: "dns {\n\tupstream {\n\t\t${1:alidns}: '${2:udp://dns.alidns.com:53}'\n\t}\n\trouting {\n\t\trequest {\n\t\t\tfallback: ${1:alidns}\n\t\t}\n\t}\n}",
	},
	Entry{
		Name:    "group",
		Detail:  "Node groups",
		Doc:     "Node group. Groups defined here can be used as outbounds in section `routing`.",
		Snippet: "group {\n\t${1:proxy} {\n\t\tpolicy: ${2:min_moving_avg}\n\t}\n}",
	},
	Entry{
		Name:    "routing",
		Detail:  "Traffic routing",
		Doc:     "Traffic follows this routing. Rules are matched top-down and the first match wins; `fallback` applies when no rule matches.\n\nInside `dns`, this block holds the `request` and `response` routing of DNS messages.\n\nNotice: domain traffic split will fail if DNS traffic is not taken over by dae.",
		Snippet: "routing {\n\t$0\n\tfallback: ${1:proxy}\n}",
	},
	Entry{
		Name:   "upstream",
		Block:  "dns",
		Detail: "DNS upstreams",
		Doc:    "Value can be `scheme://host:port`, where the scheme can be tcp/udp/tcp+udp/https/tls/http3/h3/quic.\n\nIf host is a domain and has both IPv4 and IPv6 record, dae will automatically choose IPv4 or IPv6 to use according to group policy.",
	},
	Entry{
		Name:   "request",
		Block:  "routing",
		Detail: "DNS request routing",
		Doc:    "DNS requests will follow this routing.\n\nBuilt-in outbound: `asis`.\n\nAvailable functions: `qname`, `qtype`.",
	},
	Entry{
		Name:   "response",
		Block:  "routing",
		Detail: "DNS response routing",
		Doc:    "DNS responses will follow this routing.\n\nBuilt-in outbound: `accept`, `reject`.\n\nAvailable functions: `qname`, `qtype`, `ip`, `upstream`.",
	},
	Entry{
		Name:   "fixed_domain_ttl",
		Block:  "dns",
		Detail: "Fixed TTL per domain",
		Doc:    "Force the TTL of answers for the listed domains, e.g. `ddns.example.org: 10`.",
	},
)

// Parameters documents keys of global, dns and group blocks.
var Parameters = newTable(
	Entry{Name: "tproxy_port", Block: "global", Detail: "tproxy port", Doc: "tproxy port to listen on. It is NOT a HTTP/SOCKS port, and is just used by eBPF program.\n\nIn normal case, you do not need to use it."},
	Entry{Name: "tproxy_port_protect", Block: "global", Detail: "Protect tproxy port", Doc: "Set it true to protect tproxy port from unsolicited traffic.", Values: []string{"true", "false"}},
	Entry{Name: "so_mark_from_dae", Block: "global", Detail: "SO_MARK of dae traffic", Doc: "Set non-zero value to enable pass traffic with this mark to proxy."},
	Entry{Name: "log_level", Block: "global", Detail: "Log level", Doc: "Log level: error, warn, info, debug, trace."},
	Entry{Name: "disable_waiting_network", Block: "global", Detail: "Skip network wait", Doc: "Disable waiting for network before pulling subscriptions.", Values: []string{"true", "false"}},
	Entry{Name: "enable_local_tcp_fast_redirect", Block: "global", Detail: "Local TCP fast redirect", Doc: "Enable fast redirect for local TCP connections.", Values: []string{"true", "false"}},
	Entry{Name: "lan_interface", Block: "global", Detail: "LAN interfaces", Doc: "The LAN interface to bind. Use it if you only want to proxy LAN instead of localhost."},
	Entry{Name: "wan_interface", Block: "global", Detail: "WAN interfaces", Doc: "The WAN interface to bind. Use it if you want to proxy localhost. Use `auto` to auto detect."},
	Entry{Name: "auto_config_kernel_parameter", Block: "global", Detail: "Kernel parameters", Doc: "Automatically configure Linux kernel parameters like `ip_forward` and `send_redirects`.", Values: []string{"true", "false"}},
	Entry{Name: "tcp_check_url", Block: "global", Detail: "TCP check URL", Doc: "Node connectivity check.\n\nHost of URL should have both IPv4 and IPv6 if you have double stack in local."},
	Entry{Name: "tcp_check_http_method", Block: "global", Detail: "TCP check method", Doc: "The HTTP request method to `tcp_check_url`.", Values: []string{"HEAD", "GET", "POST"}},
	Entry{Name: "udp_check_dns", Block: "global", Detail: "UDP check DNS", Doc: "This DNS will be used to check UDP connectivity of nodes."},
	Entry{Name: "check_interval", Block: "global", Detail: "Check interval", Doc: "Interval of connectivity check for TCP and UDP, e.g. `30s`."},
	Entry{Name: "check_tolerance", Block: "global", Detail: "Check tolerance", Doc: "Group will switch node only when `new_latency <= old_latency - tolerance`."},
	Entry{Name: "dial_mode", Block: "global", Detail: "Dial mode", Doc: "How to dial proxies: by the IP from DNS or by the sniffed domain."},
	Entry{Name: "allow_insecure", Block: "global", Detail: "Allow insecure TLS", Doc: "Allow insecure TLS certificates. It is not recommended to turn it on unless you have to.", Values: []string{"true", "false"}},
	Entry{Name: "sniffing_timeout", Block: "global", Detail: "Sniffing timeout", Doc: "Timeout to waiting for first data sending for sniffing. It is always 0 if dial_mode is ip."},
	Entry{Name: "tls_implementation", Block: "global", Detail: "TLS implementation", Doc: "TLS implementation. `tls` is to use Go's crypto/tls. `utls` is to use uTLS, which can imitate browser's Client Hello.", Values: []string{"tls", "utls"}},
	Entry{Name: "utls_imitate", Block: "global", Detail: "uTLS fingerprint", Doc: "The Client Hello ID for uTLS to imitate. This takes effect only if `tls_implementation` is `utls`.", Values: []string{"chrome_auto", "firefox_auto", "safari_auto", "ios_auto", "edge_auto", "randomized"}},
	Entry{Name: "mptcp", Block: "global", Detail: "Multipath TCP", Doc: "Enable Multipath TCP for outbound connections.", Values: []string{"true", "false"}},
	Entry{Name: "bandwidth_max_tx", Block: "global", Detail: "Max upload bandwidth", Doc: "The maximum bandwidth for accessing the Internet, e.g. `200 mbps`. Used by congestion control of some protocols."},
	Entry{Name: "bandwidth_max_rx", Block: "global", Detail: "Max download bandwidth", Doc: "The maximum bandwidth for accessing the Internet, e.g. `1 gbps`."},
	Entry{Name: "fallback_resolver", Block: "global", Detail: "Fallback resolver", Doc: "Resolver used when the system DNS is unavailable, e.g. `8.8.8.8:53`."},
	Entry{Name: "pprof_port", Block: "global", Detail: "pprof port", Doc: "Port of the pprof debug server. 0 disables it."},
	Entry{Name: "ipversion_prefer", Block: "dns", Detail: "Preferred IP version", Doc: "For domains that have both IPv4 and IPv6 records, only the preferred version is answered.", Values: []string{"4", "6"}},
	Entry{Name: "filter", Block: "group", Detail: "Node filter", Doc: "Filter nodes from the global node pool defined by the `subscription` and `node` sections.\n\nAvailable functions: `name`, `subtag`. Not operator is supported.\n\nAvailable keys in name function: `keyword`, `regex`. No key indicates full match."},
	Entry{Name: "policy", Block: "group", Detail: "Dialer selection policy", Doc: "Dialer selection policy. For each new connection, select a node as dialer from group by this policy."},
)

// PropertyValues documents the enumerated values of parameters.
var PropertyValues = map[string]ValueTable{
	"dial_mode": values(
		"ip", "Dial proxy using the IP from DNS directly. This allows your IPv4 and IPv6 to choose the optimal path respectively.",
		"domain", "Dial proxy using the domain from sniffing. This relieves DNS pollution and usually brings faster proxy response because the proxy re-resolves the domain remotely.",
		"domain+", "Based on `domain` mode but do not check the reality of sniffed domain. Useful when DNS requests do not go through dae.",
		"domain++", "Based on `domain+` mode but force to re-route traffic using the sniffed domain. It doesn't work for direct traffic and consumes more CPU.",
	),
	"policy": values(
		"random", "Select randomly.",
		"fixed", "Select the fixed node. Connectivity check will be disabled.",
		"min", "Select node by the latency of last check.",
		"min_avg10", "Select node by the average of latencies of last 10 checks.",
		"min_moving_avg", "Select node by the moving average of latencies of checks, which means more recent latencies have higher weight.",
	),
	"log_level": values(
		"error", "Only errors.",
		"warn", "Errors and warnings.",
		"info", "Informational messages. The default.",
		"debug", "Debug output.",
		"trace", "Everything, including per-connection traces.",
	),
}

// Functions documents rule functions.
var Functions = newTable(
	Entry{Name: "domain", Block: "routing", Detail: "Match domain", Doc: "Match domain. Available keys: `suffix`, `keyword`, `regex`, `full`, `geosite`. No key indicates suffix.", Snippet: "domain(${1:geosite:cn}) -> ${2:direct}"},
	Entry{Name: "sip", Block: "routing", Detail: "Match source IP", Doc: "Match source IP. CIDR format is also supported.", Snippet: "sip(${1:192.168.0.0/16}) -> ${2:direct}"},
	Entry{Name: "dip", Block: "routing", Detail: "Match destination IP", Doc: "Match dest IP. CIDR format and `geoip:` are also supported.", Snippet: "dip(${1:geoip:private}) -> ${2:direct}"},
	Entry{Name: "sport", Block: "routing", Detail: "Match source port", Doc: "Match source port. Range like 8000-9000 is also supported.", Snippet: "sport(${1:53}) -> ${2:direct}"},
	Entry{Name: "dport", Block: "routing", Detail: "Match destination port", Doc: "Match dest port. Range like 8000-9000 is also supported.", Snippet: "dport(${1:443}) -> ${2:proxy}"},
	Entry{Name: "ipversion", Block: "routing", Detail: "Match IP version", Doc: "Match IP version. Available values: 4, 6.", Snippet: "ipversion(${1:6}) -> ${2:block}"},
	Entry{Name: "l4proto", Block: "routing", Detail: "Match L4 protocol", Doc: "Match level 4 protocol. Available values: tcp, udp.", Snippet: "l4proto(${1:udp}) -> ${2:direct}"},
	Entry{Name: "pname", Block: "routing", Detail: "Match process name", Doc: "Match process name. It only works on WAN mode and for localhost programs.", Snippet: "pname(${1:curl}) -> ${2:direct}"},
	Entry{Name: "mac", Block: "routing", Detail: "Match source MAC", Doc: "Match source MAC address. It works on LAN mode.", Snippet: "mac(${1:02:42:ac:11:00:02}) -> ${2:direct}"},
	Entry{Name: "dscp", Block: "routing", Detail: "Match DSCP", Doc: "Match DSCP value of the IP header.", Snippet: "dscp(${1:0x4}) -> ${2:direct}"},
	Entry{Name: "qname", Block: "dns", Detail: "Match query name", Doc: "Match the DNS query name. Accepts the same keys as `domain`.", Snippet: "qname(${1:geosite:cn}) -> ${2:alidns}"},
	Entry{Name: "qtype", Block: "dns", Detail: "Match query type", Doc: "Match the DNS query type, e.g. `a`, `aaaa`, `cname`.", Snippet: "qtype(${1:aaaa}) -> ${2:reject}"},
	Entry{Name: "ip", Block: "dns", Detail: "Match answer IP", Doc: "Match the IP of a DNS answer. Only available in `response`."},
	Entry{Name: "upstream", Block: "dns", Detail: "Match upstream", Doc: "Match the upstream that answered. Only available in `response`.", Snippet: "upstream(${1:googledns}) -> ${2:accept}"},
	Entry{Name: "name", Block: "group", Detail: "Select nodes by name", Doc: "Select nodes by their tag in `node` or their name from subscriptions. Keys: `keyword`, `regex`. No key indicates full match.", Snippet: "name(${1:node})"},
	Entry{Name: "subtag", Block: "group", Detail: "Select nodes by subscription", Doc: "Select nodes from the subscriptions with the given tag. Key: `regex`. No key indicates full match.", Snippet: "subtag(${1:sub})"},
)

// Outbounds documents outbound keywords. The entries beyond the built-ins
// are DNS verdicts.
var Outbounds = newTable(
	Entry{Name: "proxy", Detail: "Default proxy group", Doc: "The conventional name of the default proxy group."},
	Entry{Name: "direct", Detail: "Direct connection", Doc: "Connect directly without any proxy."},
	Entry{Name: "block", Detail: "Block", Doc: "Drop the traffic."},
	Entry{Name: "must_direct", Detail: "Forced direct", Doc: "Connect directly, even for DNS traffic that would otherwise be hijacked."},
	Entry{Name: "must_proxy", Detail: "Forced proxy", Doc: "Proxy the traffic, even for DNS traffic that would otherwise be handled by dae."},
	Entry{Name: "accept", Block: "dns", Detail: "Accept DNS answer", Doc: "Accept the DNS response."},
	Entry{Name: "asis", Block: "dns", Detail: "Send as is", Doc: "Send the DNS request to the upstream configured by the request as is."},
	Entry{Name: "reject", Block: "dns", Detail: "Reject DNS answer", Doc: "Reject the DNS request or response with an empty answer."},
)

// TypePrefixes documents the keys accepted inside rule function arguments.
var TypePrefixes = newTable(
	Entry{Name: "geosite", Detail: "GeoSite category", Doc: "Match a category of `geosite.dat`, e.g. `geosite:cn`."},
	Entry{Name: "geoip", Detail: "GeoIP country", Doc: "Match a country or category of `geoip.dat`, e.g. `geoip:private`."},
	Entry{Name: "full", Detail: "Full domain", Doc: "Match the full domain exactly."},
	Entry{Name: "suffix", Detail: "Domain suffix", Doc: "Match the domain and its subdomains."},
	Entry{Name: "keyword", Detail: "Keyword", Doc: "Match if the name contains the keyword."},
	Entry{Name: "regex", Detail: "Regular expression", Doc: "Match the name against a regular expression."},
	Entry{Name: "ext", Detail: "External data file", Doc: "Match against a category of an external dat file, e.g. `ext:file.dat:tag`."},
)

// Keywords are clause keywords of rule blocks.
var Keywords = newTable(
	Entry{Name: "fallback", Detail: "Default outbound", Doc: "The outbound used when no rule matches.", Snippet: "fallback: ${1:proxy}"},
)
