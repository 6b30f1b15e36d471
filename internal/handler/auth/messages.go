package auth

const (
	msgDuplicateAccount = "You've already signed up with that email, log in instead!"
	msgUnknownAccount   = "That email does not exist, please try again."
	msgBadPassword      = "Password incorrect, please try again."
	msgLoginFailed      = "We couldn't log you in right now. Please try again."
	msgRegisterFailed   = "We couldn't create your account right now. Please try again."
	msgRegisteredLogIn  = "Your account was created. Please log in."
	msgBadForm          = "Please check the form and try again."
	msgPasswordTooLong  = "Must be at most 72 bytes; accented and non-Latin characters count as more than one."
)
