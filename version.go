package notably

// Version exposes the release version of the client.
const Version = "0.1.0"
