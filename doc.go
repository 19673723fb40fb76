/*
Package vision2022 locates the circular retro-reflective hub target in
camera frames and reports the camera's yaw, pitch and horizontal distance
to it, frame by frame, for the robot's aiming control loop.

The per-frame flow is: binary mask -> quad extraction -> localization.
Localization either runs tracked PnP against the 3D target model (warm
started from the previous frame, with an outlier jump veto) or, when the
camera and hub mounting geometry are known, a closed-form solve from a
single vertical-angle observation.

See the subpackages for the individual stages and cmd/hubtrack for the
frame loop.
*/
package vision2022
