package common

// VerificationCodeLength is the exact number of digits in an OTP code.
const VerificationCodeLength = 6

// AuthorizationHeader carries the bearer token on outbound requests.
const AuthorizationHeader = "Authorization"
